package export

import (
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultProgressEvery is how many exported documents pass between progress
// lines.
const DefaultProgressEvery = 500

var counts = message.NewPrinter(language.English)

// progress reports rate and remaining time against a known target.
type progress struct {
	logger  *log.Entry
	every   int
	target  int
	started time.Time
	now     func() time.Time
}

func (p *progress) observe(exported int) {
	if p.every <= 0 || exported == 0 || exported%p.every != 0 {
		return
	}
	elapsed := p.now().Sub(p.started)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(exported) / elapsed.Seconds()
	}
	fields := log.Fields{
		"exported": counts.Sprintf("%d", exported),
		"rate":     counts.Sprintf("%.1f/s", rate),
	}
	if p.target > 0 {
		fields["target"] = counts.Sprintf("%d", p.target)
		if remaining := p.target - exported; remaining > 0 && rate > 0 {
			eta := time.Duration(float64(remaining) / rate * float64(time.Second))
			fields["eta"] = eta.Round(time.Second).String()
		}
	}
	p.logger.WithFields(fields).Info("export progress")
}
