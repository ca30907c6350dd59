package pantry

// Version is the release version. The build overrides it with -ldflags.
var Version = "0.1.0"
