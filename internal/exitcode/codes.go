package exitcode

// Exit codes for the ingestion CLI.
// Every failure is terminal and reported the same way; the scheduler only
// needs to know whether the whole run succeeded.
const (
	// Success - every reference row was fetched and stored
	Success = 0

	// Failure - any configuration, input, network, upstream API or storage
	// error. Check logs for the failing stage.
	Failure = 1
)
