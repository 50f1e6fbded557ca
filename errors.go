package commentmod

import "errors"

// Indicates that a content kind already has a policy registered. Returned by Registry.Register; the registry is left unchanged.
var ErrAlreadyModerated = errors.New("content kind already has a moderation policy")

// Indicates that a content kind has no registered policy, in a situation where one is required. Returned by Registry.Unregister; the registry is left unchanged.
var ErrNotModerated = errors.New("content kind has no moderation policy")

// Indicates that a policy's configuration is contradictory or incomplete. A wrapped error provides the specific field. Surfaced at registration time, never during evaluation.
var ErrInvalidPolicy = errors.New("invalid policy configuration")

// Indicates that post-persist processing needed to delete a comment, but the engine has no Store configured.
var ErrNoStore = errors.New("engine has no comment store configured")

// Indicates that a policy consulted the spam checker, but the engine has none configured. The comment is treated as ham.
var ErrNoSpamChecker = errors.New("engine has no spam checker configured")

// Indicates that a policy consulted submitter history, but the engine has none configured. The submitter is treated as a first-timer.
var ErrNoHistory = errors.New("engine has no submitter history configured")
