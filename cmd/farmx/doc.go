// Command farmx is the FarmXChain client: a terminal interface to the
// marketplace backend and the launcher for the web portal.
//
// Usage:
//
//	farmx login --email asha@farmx.test --password ...
//	farmx whoami
//	farmx crops mine
//	farmx orders list --tab past
//	farmx admin stats
//	farmx distributor earnings
//	farmx serve
//	farmx route:list
//
// The CLI keeps one session in SESSION_FILE (default ~/.farmx/session.json).
// Commands that need a role refuse to run before calling the backend.
package main
