// Package timing tracks frame durations. It is meant to be driven from the main loop only.
package timing

import "time"

// fpsWindow is how many frames the average FPS is computed over
const fpsWindow = 60

var (
	now = time.Now

	startTime      time.Time
	frameStartTime time.Time

	dt float32

	frameTimes     [fpsWindow]float32
	frameTimesIdx  int
	frameTimesSize int
	frameTimesSum  float32

	frameCount uint64
)

func Init() {
	startTime = now()
	frameStartTime = startTime
	dt = 0.01

	frameTimes = [fpsWindow]float32{}
	frameTimesIdx = 0
	frameTimesSize = 0
	frameTimesSum = 0
	frameCount = 0
}

func FrameStarted() {
	frameStartTime = now()
}

func FrameEnded() {

	dt = float32(now().Sub(frameStartTime).Seconds())
	frameCount++

	// Ring buffer with a running sum
	frameTimesSum -= frameTimes[frameTimesIdx]
	frameTimes[frameTimesIdx] = dt
	frameTimesSum += dt

	frameTimesIdx = (frameTimesIdx + 1) % fpsWindow
	if frameTimesSize < fpsWindow {
		frameTimesSize++
	}
}

// DT returns the duration of the last frame in seconds
func DT() float32 {
	return dt
}

// GetAvgFPS returns the frames per second averaged over the last frames, or 0 before any frame ends
func GetAvgFPS() float32 {

	if frameTimesSize == 0 || frameTimesSum <= 0 {
		return 0
	}

	return float32(frameTimesSize) / frameTimesSum
}

// ElapsedTime returns the time since Init
func ElapsedTime() time.Duration {
	return now().Sub(startTime)
}

func FrameCount() uint64 {
	return frameCount
}
