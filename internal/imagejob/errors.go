package imagejob

import "errors"

var (
	// ErrTransport is returned when the service is unreachable or answers
	// with a non-2xx HTTP status.
	ErrTransport = errors.New("image service request failed")

	// ErrRejected is returned when the service answers 2xx but with an
	// error code in the response envelope.
	ErrRejected = errors.New("image service rejected the request")

	// ErrJobFailed is returned when the job itself reports status "failed".
	ErrJobFailed = errors.New("image generation job failed")

	// ErrNoImage is returned when a completed job carries no image URL.
	ErrNoImage = errors.New("completed job has no image URL")

	// ErrPollExhausted is returned when the job is still pending after the
	// last allowed poll.
	ErrPollExhausted = errors.New("image generation did not finish in time")
)
