package runtime

import (
	"go.uber.org/zap"

	"github.com/wippyai/icu-bridge/resource"
)

// lifecycleLogger logs object lifecycle transitions at debug level.
type lifecycleLogger struct {
	log *zap.Logger
}

func (o *lifecycleLogger) OnResourceEvent(e resource.Event) {
	ce := o.log.Check(zap.DebugLevel, "object "+e.Type.String())
	if ce == nil {
		return
	}
	fields := []zap.Field{
		zap.String("class", e.Class),
		zap.Uint32("handle", uint32(e.Handle)),
		zap.Bool("owned", e.Owned),
	}
	if e.Type == resource.EventDeferred {
		fields = append(fields, zap.Int("borrowers", e.Borrowers))
	}
	ce.Write(fields...)
}
