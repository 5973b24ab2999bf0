package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mvoloshin/sortlab/profile"
	"github.com/mvoloshin/sortlab/tracker"
)

var logger *zap.Logger

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		return true
	},
}

// Client message types
type ClientMessage struct {
	Type    string           `json:"type"`
	Profile *profile.Profile `json:"profile,omitempty"`
}

// Server message types
type ServerMessage struct {
	Type     string               `json:"type"`
	Running  *bool                `json:"running,omitempty"`
	Profile  *profile.Profile     `json:"profile,omitempty"`
	Input    []int                `json:"input,omitempty"`
	Sorted   []int                `json:"sorted,omitempty"`
	Steps    []tracker.StepRecord `json:"steps,omitempty"`
	Metrics  *tracker.Metrics     `json:"metrics,omitempty"`
	Report   *tracker.Report      `json:"report,omitempty"`
	Error    string               `json:"error,omitempty"`
	Dropped  int64                `json:"dropped,omitempty"`
	Duration int64                `json:"durationNs,omitempty"`
}

// stepBatchSize and stepFlushInterval pace step streaming to the client:
// records are flushed whenever a batch fills or the interval elapses.
const (
	stepBatchSize     = 256
	stepFlushInterval = 100 * time.Millisecond
)

// runState serializes runs per connection.
type runState struct {
	mu      sync.Mutex
	running bool
	prof    *profile.Profile
}

func (s *runState) tryStart(p *profile.Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	s.prof = p
	return true
}

func (s *runState) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

func (s *runState) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.prof = profile.DefaultProfile()
}

func (s *runState) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *runState) current() *profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prof
}

// safeConn wraps a WebSocket connection with a mutex to prevent concurrent writes
type safeConn struct {
	*websocket.Conn
	writeMu sync.Mutex
}

func (sc *safeConn) WriteJSON(v interface{}) error {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	return sc.Conn.WriteJSON(v)
}

// streamSteps batches step records off ch and writes them to the client
// until ch closes. Runs in its own goroutine and controls UI pacing.
func streamSteps(conn *safeConn, ch <-chan tracker.StepRecord) {
	ticker := time.NewTicker(stepFlushInterval)
	defer ticker.Stop()

	batch := make([]tracker.StepRecord, 0, stepBatchSize)
	flush := func() bool {
		if len(batch) == 0 {
			return true
		}
		msg := ServerMessage{Type: "steps", Steps: batch}
		if err := conn.WriteJSON(msg); err != nil {
			logger.Warn("error sending steps", zap.Error(err))
			return false
		}
		batch = make([]tracker.StepRecord, 0, stepBatchSize)
		return true
	}

	for {
		select {
		case rec, ok := <-ch:
			if !ok {
				flush()
				return
			}
			batch = append(batch, rec)
			if len(batch) >= stepBatchSize && !flush() {
				return
			}
		case <-ticker.C:
			if !flush() {
				return
			}
		}
	}
}

// executeRun runs one sort to completion, streaming steps as it goes, and
// finishes with the report.
func executeRun(conn *safeConn, state *runState, prof *profile.Profile) {
	defer state.finish()

	input, err := prof.BuildInput()
	if err != nil {
		conn.WriteJSON(ServerMessage{Type: "error", Error: err.Error()})
		return
	}

	stepCh := make(chan tracker.StepRecord, 1024)
	tc := prof.TrackerOptions()
	tc.OnStep = func(rec tracker.StepRecord) {
		stepCh <- rec
	}
	tc.Logger = logger

	alg, err := prof.BuildAlgorithmWithTracker(tc)
	if err != nil {
		conn.WriteJSON(ServerMessage{Type: "error", Error: err.Error()})
		return
	}

	running := true
	conn.WriteJSON(ServerMessage{
		Type:    "status",
		Running: &running,
		Profile: prof,
		Input:   input,
	})

	var streamDone sync.WaitGroup
	streamDone.Add(1)
	go func() {
		defer streamDone.Done()
		streamSteps(conn, stepCh)
	}()

	start := time.Now()
	sorted := alg.Execute(input)
	close(stepCh)
	streamDone.Wait()

	rep := alg.Report()
	updatePrometheusMetrics(alg.Name(), len(input), rep)
	logger.Info("run complete",
		zap.String("algorithm", alg.Name()),
		zap.Int("n", len(input)),
		zap.Duration("elapsed", time.Since(start)))

	metrics := rep.Metrics
	conn.WriteJSON(ServerMessage{
		Type:     "report",
		Sorted:   sorted,
		Metrics:  &metrics,
		Report:   rep,
		Dropped:  rep.TimelineDropped,
		Duration: int64(rep.ExecutionTime),
	})

	running = false
	conn.WriteJSON(ServerMessage{Type: "status", Running: &running, Profile: prof})
}

func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("error upgrading connection", zap.Error(err))
		return
	}
	defer conn.Close()

	// Wrap connection with mutex for safe concurrent writes
	safeConn := &safeConn{Conn: conn}

	logger.Info("client connected", zap.String("remote", r.RemoteAddr))

	state := &runState{prof: profile.DefaultProfile()}

	running := false
	statusMsg := ServerMessage{
		Type:    "status",
		Running: &running,
		Profile: state.current(),
	}
	if err := safeConn.WriteJSON(statusMsg); err != nil {
		logger.Warn("error sending status", zap.Error(err))
		return
	}

	// Handle messages from client
	for {
		var msg ClientMessage
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("error reading message", zap.Error(err))
			}
			break
		}

		logger.Info("received command", zap.String("type", msg.Type))

		switch msg.Type {
		case "run":
			prof := msg.Profile
			if prof == nil {
				prof = state.current()
			}
			if !state.tryStart(prof) {
				safeConn.WriteJSON(ServerMessage{Type: "error", Error: "a run is already in progress"})
				continue
			}
			go executeRun(safeConn, state, prof)

		case "reset":
			if state.isRunning() {
				safeConn.WriteJSON(ServerMessage{Type: "error", Error: "cannot reset while a run is in progress"})
				continue
			}
			state.reset()
			running := false
			safeConn.WriteJSON(ServerMessage{
				Type:    "status",
				Running: &running,
				Profile: state.current(),
			})

		case "status":
			running := state.isRunning()
			safeConn.WriteJSON(ServerMessage{
				Type:    "status",
				Running: &running,
				Profile: state.current(),
			})

		default:
			safeConn.WriteJSON(ServerMessage{
				Type:  "error",
				Error: fmt.Sprintf("unknown command %q", msg.Type),
			})
		}
	}

	logger.Info("client disconnected", zap.String("remote", r.RemoteAddr))
}

func quitHandler(w http.ResponseWriter, r *http.Request) {
	logger.Info("shutdown requested via /quitquitquit")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Server shutting down...")

	go func() {
		time.Sleep(100 * time.Millisecond)
		logger.Info("server stopped")
		logger.Sync()
		os.Exit(0)
	}()
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	initPrometheusMetrics()

	http.HandleFunc("/ws", handleWebSocket)
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/quitquitquit", quitHandler)

	logger.Info("server starting",
		zap.String("ws", fmt.Sprintf("ws://localhost%s/ws", *addr)),
		zap.String("metrics", fmt.Sprintf("http://localhost%s/metrics", *addr)),
		zap.String("shutdown", fmt.Sprintf("http://localhost%s/quitquitquit", *addr)))
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
