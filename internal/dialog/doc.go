// Package dialog implements the conversation state machine that drives
// multi-step chats. It tracks one session per user, dispatches free-form
// text to the handler owning the session's current step, and falls back
// to command matching when no flow is active. The package is
// transport-agnostic: the Telegram adapter feeds it turns and delivers
// the replies it records.
package dialog
