package shared

import (
	"log/slog"
	"net/http"

	"paydesk/internal/domain/audit"
	"paydesk/internal/requestctx"
)

// RecordAudit stamps entry with the caller, request id and client address and
// writes it. Failures are logged and never fail the request.
func RecordAudit(r *http.Request, recorder audit.Recorder, entry audit.Entry) {
	if recorder == nil {
		return
	}
	if session, ok := requestctx.GetSession(r.Context()); ok {
		entry.ActorID = session.UserID
	}
	entry.RequestID = requestctx.GetRequestID(r.Context())
	entry.IP = ClientIP(r)
	if err := recorder.Record(r.Context(), entry); err != nil {
		slog.Warn("audit record failed", "action", entry.Action, "entityId", entry.EntityID, "err", err)
	}
}
