package rod

var (
	LifecycleEvent     = lifecycleEvent
	LoadingFailedEvent = loadingFailedEvent
)
