package playback

// MediaSurface abstracts the platform player the session drives: the native
// YouTube iframe player on iOS/Android, an embedded WebView player on web.
// The session never branches on platform; the surface is chosen at
// construction by the screen that owns it.
type MediaSurface interface {
	// Load cues a video and positions it at startSeconds without playing.
	Load(videoID string, startSeconds int)

	// Play starts or resumes playback of the loaded video.
	Play()

	// Pause halts playback, keeping the current position.
	Pause()

	// Seek moves playback to the given position in seconds.
	Seek(seconds int)

	// CurrentTime reports the current playback position in seconds.
	// Sampled at 1 Hz by the session while playing.
	CurrentTime() int
}
