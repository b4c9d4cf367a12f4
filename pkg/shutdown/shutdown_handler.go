package shutdown

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/logger"
)

const (
	// the default amount of time to wait for background processes to terminate. After that the process is killed.
	defaultWaitToKillTime = 60 * time.Second
)

// ShutdownHandler waits until a shutdown signal was received or the node tried to shutdown itself,
// and shuts down all processes gracefully.
type ShutdownHandler struct {
	log              *logger.Logger
	daemon           daemon.Daemon
	waitToKillTime   time.Duration
	gracefulStop     chan os.Signal
	nodeSelfShutdown chan string
}

// NewShutdownHandler creates a new shutdown handler.
// A waitToKillTime of zero uses the default of one minute.
func NewShutdownHandler(log *logger.Logger, daemon daemon.Daemon, waitToKillTime time.Duration) *ShutdownHandler {

	if waitToKillTime <= 0 {
		waitToKillTime = defaultWaitToKillTime
	}

	gs := &ShutdownHandler{
		log:              log,
		daemon:           daemon,
		waitToKillTime:   waitToKillTime,
		gracefulStop:     make(chan os.Signal, 1),
		nodeSelfShutdown: make(chan string),
	}

	signal.Notify(gs.gracefulStop, syscall.SIGTERM)
	signal.Notify(gs.gracefulStop, syscall.SIGINT)

	return gs
}

// SelfShutdown can be called in order to instruct the node to shutdown cleanly without receiving any interrupt signals.
func (gs *ShutdownHandler) SelfShutdown(msg string) {
	select {
	case gs.nodeSelfShutdown <- msg:
	default:
	}
}

// Run starts the ShutdownHandler go routine.
func (gs *ShutdownHandler) Run() {

	go func() {
		select {
		case sig := <-gs.gracefulStop:
			gs.log.Warnf("Received shutdown request (%s) - waiting (max %v) to finish processing ...", sig, gs.waitToKillTime)
		case msg := <-gs.nodeSelfShutdown:
			gs.log.Warnf("Node self-shutdown: %s; waiting (max %v) to finish processing ...", msg, gs.waitToKillTime)
		}

		go gs.reportPendingWorkers()

		gs.daemon.ShutdownAndWait()
	}()
}

// reportPendingWorkers logs the still running background workers every second
// and kills the process once waitToKillTime has passed.
func (gs *ShutdownHandler) reportPendingWorkers() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	deadline := time.Now().Add(gs.waitToKillTime)
	for now := range ticker.C {
		if now.After(deadline) {
			gs.log.Fatal("Background processes did not terminate in time! Forcing shutdown ...")
		}

		processList := ""
		if runningBackgroundWorkers := gs.daemon.GetRunningBackgroundWorkers(); len(runningBackgroundWorkers) > 0 {
			processList = "(" + strings.Join(runningBackgroundWorkers, ", ") + ") "
		}

		gs.log.Warnf("Received shutdown request - waiting (max %v) to finish processing %s...", deadline.Sub(now).Truncate(time.Second), processList)
	}
}
