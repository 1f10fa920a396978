package routes

import (
	"net/http"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/controllers"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/go-chi/chi/v5"
	"github.com/segmentio/kafka-go"
)

// View is used to replay the marker commands or the log drain as server sent events
type View struct {
	E *env.Env
	C *connections.C

	stream *controllers.Stream
}

// Method is a used to get the Method of the view route
func (view *View) Method() string {
	return http.MethodGet
}

// Path is used to get the Path of the view route
func (view *View) Path() string {
	return "/view/{topic}"
}

// Handler is used to get the Handler of the view route
func (view *View) Handler(w http.ResponseWriter, r *http.Request) {
	offset := kafka.LastOffset

	var topic string
	switch chi.URLParam(r, "topic") {
	case "markers":
		topic = view.E.MarkerTopic
	case "markers-history":
		topic = view.E.MarkerTopic
		offset = kafka.FirstOffset
	case "log":
		topic = view.E.LogTopic
	case "logs":
		topic = view.E.LogTopic
		offset = kafka.FirstOffset
	default:
		http.NotFound(w, r)
		return
	}

	s := view.stream
	if s == nil {
		s = &controllers.Stream{
			E: view.E,
			C: view.C,
		}
	}

	s.Subscribe(r.Context(), w, topic, offset)
}
