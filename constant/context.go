package constant

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	SessionIDKey contextKey = "session_id"
	AuthViaKey   contextKey = "auth_via"
)

// AuthVia values stored under AuthViaKey.
const (
	AuthViaSession = "session"
	AuthViaBearer  = "bearer"
)

const (
	SessionCookieName = "storefront_session"
	CSRFCookieName    = "csrf_token"
	CSRFFormField     = "csrf_token"
	CSRFHeader        = "X-CSRFToken"
	CSRFHeaderAlt     = "X-CSRF-Token"
)
