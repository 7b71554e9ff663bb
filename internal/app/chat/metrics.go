package chat

import "github.com/prometheus/client_golang/prometheus"

var (
	membersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_chat_members",
		Help: "Number of members currently registered in the room.",
	})

	sessionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_chat_sessions_total",
		Help: "Total number of sessions registered since startup.",
	})

	broadcastsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_chat_broadcasts_total",
		Help: "Total number of messages broadcast to the room.",
	})

	droppedFramesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_chat_dropped_frames_total",
		Help: "Total outbound frames dropped because a member's queue was full.",
	})
)

func init() {
	prometheus.MustRegister(membersGauge)
	prometheus.MustRegister(sessionsTotal)
	prometheus.MustRegister(broadcastsTotal)
	prometheus.MustRegister(droppedFramesTotal)
}
