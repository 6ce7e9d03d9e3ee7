package root

import (
	"github.com/zenGate-Global/palmyra-idcheck/apps/cli/cmd/corporate"
	"github.com/zenGate-Global/palmyra-idcheck/apps/cli/cmd/journal"
	"github.com/zenGate-Global/palmyra-idcheck/apps/cli/cmd/kinds"
	schemacmd "github.com/zenGate-Global/palmyra-idcheck/apps/cli/cmd/schema"
	"github.com/zenGate-Global/palmyra-idcheck/apps/cli/cmd/validate"
)

func init() {
	Root().AddCommand(validate.Command())
	Root().AddCommand(kinds.Command())
	Root().AddCommand(corporate.Command())
	Root().AddCommand(schemacmd.Command())
	Root().AddCommand(journal.Command())
}
