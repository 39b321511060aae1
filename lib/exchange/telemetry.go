package exchange

import (
	"throne-backend/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("throne.lib.exchange")
var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
