// Package imagejob is a client for an asynchronous text-to-image job API
// (kie.ai). A job is submitted once and then polled at a fixed interval until
// it completes, fails, or the attempt budget runs out.
//
// Transport failures (network errors, non-2xx responses, rejected requests)
// and job-level failures (status "failed") are reported as distinct errors;
// neither is retried. Only "pending" leads to another poll.
package imagejob
