package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkerrors "github.com/chatterbox-ai/chatterbox-client/client/internal/errors"
	"github.com/chatterbox-ai/chatterbox-client/client/internal/types"
)

func TestFetchConversation_History(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/conversation/c1" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"messages":[
			{"text":"hi","sender":"user","timestamp":"2025-01-01T10:00:00Z"},
			{"text":"hello","sender":"bot","timestamp":"2025-01-01T10:00:02Z"}
		]}`))
	}))
	defer srv.Close()

	msgs, err := FetchConversation(context.Background(), srv.Client(), srv.URL, "c1")
	if err != nil {
		t.Fatalf("FetchConversation error: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Sender != "user" || msgs[1].Text != "hello" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}

func TestFetchConversation_Empty(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"messages":[]}`))
	}))
	defer srv.Close()

	msgs, err := FetchConversation(context.Background(), srv.Client(), srv.URL, "c1")
	if err != nil {
		t.Fatalf("FetchConversation error: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty history, got %+v", msgs)
	}
}

func TestSendChatTurn_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var got types.ChatTurnRequest
		_ = json.NewDecoder(r.Body).Decode(&got)
		if got.CharacterID != "c1" || got.Message != "hello there" {
			t.Fatalf("unexpected payload: %+v", got)
		}
		_, _ = w.Write([]byte(`{"reply":"General Kenobi."}`))
	}))
	defer srv.Close()

	reply, err := SendChatTurn(context.Background(), srv.Client(), srv.URL, "c1", "hello there")
	if err != nil {
		t.Fatalf("SendChatTurn error: %v", err)
	}
	if reply != "General Kenobi." {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestSendChatTurn_FailureIsChatKind(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := SendChatTurn(context.Background(), srv.Client(), srv.URL, "c1", "hello")
	if !sdkerrors.HasKind(err, sdkerrors.KindChat) {
		t.Fatalf("expected chat kind, got %v", err)
	}

	srv.Close() // now transport-level failures
	_, err = SendChatTurn(context.Background(), srv.Client(), srv.URL, "c1", "hello")
	if !sdkerrors.HasKind(err, sdkerrors.KindChat) {
		t.Fatalf("transport failures during chat must also be chat kind, got %v", err)
	}
}

func TestSendChatTurn_RequiresCharacterID(t *testing.T) {
	t.Parallel()
	dummy := httptest.NewServer(http.NotFoundHandler())
	defer dummy.Close()
	_, err := SendChatTurn(context.Background(), dummy.Client(), dummy.URL, "", "hello")
	if !sdkerrors.HasKind(err, sdkerrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
