// Package store defines the write-once store for rendered slide batches and
// its backends. A batch is addressed by its id; each file inside it by name
// (slide-{order}.png). The backends are a local directory, a MinIO bucket
// and an in-process cache used in development and tests.
package store
