package throne

import (
	"throne-backend/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("throne.lib.scrapers.throne")
var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
