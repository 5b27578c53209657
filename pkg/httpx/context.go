package httpx

import "context"

type ctxKey string

const CtxKeySubject ctxKey = "subject"

// SubjectFromContext returns the authenticated subject placed by AuthnMiddleware.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(CtxKeySubject).(string)
	return s, ok && s != ""
}
