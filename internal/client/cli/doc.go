// Package cli is the interactive terminal front end of the focus group
// dashboard. It wires the local store, the API client and the dashboard
// services together and runs a read-eval-print loop over them.
//
// Commands
//
//	register, login, logout, me        account and session
//	forgot, reset                      password reset by email token
//	waitlist, contact                  public forms
//	messages, send, read <id>          inbox and compose
//	upload <type> <path>, status       identity verification
//	participants                       reviewer only
//	menu [subcommand]                  landing page menu editor (admin)
//	consent [accept|reject|custom]     cookie preferences
//	help, exit
package cli
