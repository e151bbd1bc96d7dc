// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, log
// level, CORS). AppConfig is everything specific to TaskHub: database
// connection, session and token secrets, and outbound email. The struct is
// passed to most lifecycle hooks, so anything needed during startup,
// request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: taskhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Signed-token secret for email verification, password reset, and
	// workspace invitations.
	JWTSecret string

	// Email/SMTP configuration
	MailEnabled  bool   // When false, outbound mail is logged instead of sent
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@taskhub.app)

	// FrontendURL is the SPA origin used to build links in outbound email
	// (verification, reset, invitations).
	FrontendURL string
}
