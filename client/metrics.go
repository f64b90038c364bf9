package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatterbox_client",
			Name:      "chat_turns_total",
			Help:      "Chat turns sent, by outcome.",
		},
		[]string{"status"},
	)

	historyFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatterbox_client",
			Name:      "history_fetches_total",
			Help:      "Conversation history fetches, by outcome.",
		},
		[]string{"status"},
	)

	sessionWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatterbox_client",
			Name:      "session_writes_total",
			Help:      "Durable session store transitions.",
		},
		[]string{"op"},
	)
)

const (
	statusOK    = "ok"
	statusError = "error"
)
