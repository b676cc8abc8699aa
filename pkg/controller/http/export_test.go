package http

var (
	PanicRecoveryMiddleware          = panicRecoveryMiddleware
	LoggingMiddleware                = loggingMiddleware
	MetricsMiddleware                = metricsMiddleware
	ValidateGoogleIAPTokenWithJWKURL = validateGoogleIAPTokenWithJWKURL
)
