package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/smartdoor/biometric-api/internal/api/metrics"
	"github.com/smartdoor/biometric-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes unlock commands to a fixed set of workers using
// consistent hashing on the device ref, guaranteeing per-device ordering.
// A slow or dead actuator on one device never delays unlocks on another.
type Dispatcher struct {
	workers []chan ports.UnlockCommand
	gateway ports.DoorGateway
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, gateway ports.DoorGateway, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.UnlockCommand, numWorkers),
		gateway: gateway,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.UnlockCommand, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an unlock command to the worker responsible for its device.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(cmd ports.UnlockCommand) {
	idx := d.shardIndex(cmd.DeviceRef)
	d.workers[idx] <- cmd
	metrics.UnlockQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a device ref deterministically to a worker index.
func (d *Dispatcher) shardIndex(deviceRef string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(deviceRef))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.UnlockCommand) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-ch:
			if !ok {
				return
			}
			metrics.UnlockQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.gateway.Unlock(ctx, cmd); err != nil {
				metrics.UnlocksTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("device_ref", cmd.DeviceRef).
					Str("subject_ref", cmd.SubjectRef).
					Int("worker_id", id).
					Msg("unlock command failed")
				continue
			}
			metrics.UnlocksTotal.WithLabelValues("ok").Inc()
		}
	}
}
