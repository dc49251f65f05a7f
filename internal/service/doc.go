// Package service contains the carousel use cases. It orchestrates the
// structure generator, the slide renderer and the batch store to fulfill
// the operations the API exposes: analyze, generate structure, regenerate
// slide, generate images and fetch batch.
//
// Key components:
//
// 1. CarouselService:
//   - One method per client operation
//   - Applies caller-side timeouts, shorter for model calls and longer for
//     AI-mode rendering, where each slide polls the image service
//   - Mints a new batch id for every render and stores the batch only after
//     every slide rendered
//
// 2. Pipeline and Run:
//   - Run is the per-carousel state (input, analyses, structure, batch)
//   - Pipeline executes the stages a Run has not completed
//
// 3. Error Handling:
//   - Failures are domain-tagged errors (see domain.Kind) produced where they
//     happen; the service adds no classification of its own beyond mapping
//     store lookups to not-found errors
//
// The service layer depends on the generation, render and store contracts
// through small interfaces, never on the Gemini or kie.ai adapters directly.
package service
