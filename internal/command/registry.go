// /internal/command/registry.go
package command

import (
	"time"

	"parley/pkg/cooldown"
	"parley/pkg/jobmgr"

	"github.com/rs/zerolog/log"
)

// Shared per-user cooldown for ordinary commands.
var cooldowns = cooldown.New(3*time.Second, 2)

// reminderJobs runs the pending reminder timers.
var reminderJobs = jobmgr.NewManager(func(name, status string) {
	log.Debug().Str("job", name).Str("status", status).Msg("reminder job")
})
