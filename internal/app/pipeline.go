package app

import (
	"log"
	"time"
)

// runPipeline is the frame driver: it paces camera reads, switches between
// idle and active frame rates based on detected activity, and feeds each
// frame's pose to the current session's analyzer.
//
// Loop behavior:
//  1. Start at the idle rate (5 FPS).
//  2. On activity, switch to the active rate (15 FPS).
//  3. Run pose detection and hand the result to the session. A frame with
//     no person still reaches the analyzer, which reports waiting.
//  4. After 2s without activity, fall back to the idle rate and stop
//     analyzing until the user moves again.
func (a *App) runPipeline(stopCh <-chan struct{}) {
	activeMode := false
	lastActivity := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			camera := a.Camera()
			frame, err := camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			moving, _ := a.activity.Sample(frame)

			if moving {
				lastActivity = time.Now()

				if !activeMode {
					activeMode = true
					camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastActivity) > idleTimeout() {
				activeMode = false
				camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle mode")
			}

			sess := a.sessions.Current()
			detector := a.Detector()

			if !activeMode || sess == nil || detector == nil {
				frame.Close()
				continue
			}

			body, err := detector.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting pose: %v", err)
				continue
			}

			// body is nil when nobody is in frame; the analyzer turns that
			// into a waiting state without touching its phase.
			state := sess.Analyze(body)

			if state.Feedback == "Rep complete!" {
				log.Printf("Rep %d complete for %s", state.Reps, sess.Exercise)
			}
		}
	}
}
