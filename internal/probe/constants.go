package probe

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	predictPath          = "/api/v1/predict"
	healthPath           = "/healthz"
	requestIDHeader      = "X-Request-ID"
)
