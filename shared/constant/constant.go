package constant

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RoleCustomer = "customer"
	RoleBarber   = "barber"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// Slot grid geometry. Every bookable interval is a quarter hour.
const (
	SlotMinutes  = 15
	SlotsPerHour = 60 / SlotMinutes
)

const (
	DateFormat  = "2006-01-02"
	ClockFormat = "15:04"
)

// Keys of the device-local session store. The names mirror the key/value
// entries the mobile client kept in its async storage.
const (
	StoreKeyToken         = "userToken"
	StoreKeyIdentity      = "userData"
	StoreKeySelectedStaff = "selectedBarber"
	StoreKeyEmail         = "userEmail"
	StoreKeyRole          = "userRole"
)

const (
	RequestParamBarberID = "barber_id"
	RequestParamDate     = "date"
	RequestParamTime     = "time"
	RequestParamID       = "id"
	RequestParamPath     = "path"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelStoreScopeName      = "store"
	OtelExternalScopeName   = "external"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderAccept        = "Accept"
	RequestHeaderCacheControl  = "Cache-Control"
	RequestHeaderPragma        = "Pragma"
	RequestHeaderRequestID     = "X-Request-ID"
)

const (
	ContentTypeJSON = "application/json"
	CacheControlOff = "no-cache, no-store, must-revalidate"
	PragmaNoCache   = "no-cache"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	SessionBackendFile  = "file"
	SessionBackendRedis = "redis"
)

const (
	Empty = ""
)
