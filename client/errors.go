package client

import (
	"errors"
	"fmt"

	sdkerrors "github.com/chatterbox-ai/chatterbox-client/client/internal/errors"
	"github.com/chatterbox-ai/chatterbox-client/client/internal/shardqueue"
)

// ErrBackPressure is returned when the client's internal job queue is full.
var ErrBackPressure = errors.New("back-pressure (queue full)")

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// mapSubmitErr converts internal queue errors into the public sentinel.
func mapSubmitErr(err error) error {
	if errors.Is(err, shardqueue.ErrQueueFull) {
		return fmt.Errorf("%w: %v", ErrBackPressure, err)
	}
	return err
}

// The helpers below classify errors returned by any SDK operation so the
// view layer can choose the right user-visible message: an inline "invalid
// credentials" note, a "please sign in" redirect, or a generic retry hint.

// IsValidation reports whether a client-side precondition failed before any
// request was issued.
func IsValidation(err error) bool { return sdkerrors.HasKind(err, sdkerrors.KindValidation) }

// IsUnauthorized reports whether the server rejected the call for a missing
// or expired session.
func IsUnauthorized(err error) bool { return sdkerrors.HasKind(err, sdkerrors.KindUnauthorized) }

// IsTransport reports whether the request never produced an HTTP response.
func IsTransport(err error) bool { return sdkerrors.HasKind(err, sdkerrors.KindTransport) }

// IsServer reports whether the server answered with an unexpected status.
func IsServer(err error) bool { return sdkerrors.HasKind(err, sdkerrors.KindServer) }

// IsChat reports whether a chat-turn exchange failed.
func IsChat(err error) bool { return sdkerrors.HasKind(err, sdkerrors.KindChat) }
