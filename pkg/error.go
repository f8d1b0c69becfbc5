package pkg

import "errors"

// Converter errors.
var (
	// ErrQueueFull indicates a bounded queue rejected an entry.
	ErrQueueFull = errors.New("queue full")

	// ErrInvalidKeyCode indicates a key code outside the valid Amiga code space.
	ErrInvalidKeyCode = errors.New("invalid key code")

	// ErrAlreadyRecording indicates a macro recording session is in progress.
	ErrAlreadyRecording = errors.New("already recording")

	// ErrNotRecording indicates no macro recording session is in progress.
	ErrNotRecording = errors.New("not recording")

	// ErrNoSlotSelected indicates recording stopped before a slot was chosen.
	ErrNoSlotSelected = errors.New("no macro slot selected")

	// ErrSlotOutOfRange indicates a macro slot index outside the slot array.
	ErrSlotOutOfRange = errors.New("macro slot out of range")

	// ErrPlaybackLimit indicates the concurrent playback limit was reached.
	ErrPlaybackLimit = errors.New("concurrent playback limit reached")

	// ErrStoreTooSmall indicates the non-volatile store cannot hold the image.
	ErrStoreTooSmall = errors.New("store too small")

	// ErrBadVersion indicates a persistence image with an unknown version tag.
	ErrBadVersion = errors.New("unknown store version")

	// ErrChecksum indicates a persistence image failed checksum validation.
	ErrChecksum = errors.New("checksum mismatch")

	// ErrShortRead indicates the store returned fewer bytes than requested.
	ErrShortRead = errors.New("short read from store")

	// ErrNotConfigured indicates a component is missing a required collaborator.
	ErrNotConfigured = errors.New("not configured")

	// ErrClosed indicates an operation on a closed resource.
	ErrClosed = errors.New("closed")
)
