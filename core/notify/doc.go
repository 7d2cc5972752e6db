// Package notify carries outcome signals out of the sync engine.
//
// The engine reports mutation successes and failures to a Sink so a consuming
// surface can show them; the signals are strictly fire-and-forget and never
// influence control flow. The default sink writes to the application logger.
package notify
