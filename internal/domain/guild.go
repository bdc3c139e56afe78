package domain

// CommandScope selects where the verify command is registered.
type CommandScope string

const (
	CommandScopeGuild  CommandScope = "guild"
	CommandScopeGlobal CommandScope = "global"
)

// VerifyCommandName is the slash command users invoke to start verification.
const VerifyCommandName = "verify"
