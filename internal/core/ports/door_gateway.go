package ports

import "context"

// UnlockCommand asks the actuator behind a device to open.
type UnlockCommand struct {
	DeviceRef  string
	SubjectRef string
}

// DoorGateway sends authenticated unlock commands to the physical actuator.
// It is fully decoupled from the verification decision: a failed unlock never
// changes or rolls back the recorded outcome.
type DoorGateway interface {
	Unlock(ctx context.Context, cmd UnlockCommand) error
}
