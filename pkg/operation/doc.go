/*
Package operation provisions a worktree and fills it with the local files
version control leaves behind.

	+-------------+     +------------------+     +---------+     +-----------+
	| Validating  | --> | WorktreeCreating | --> | Syncing | --> | Reporting |
	+-------------+     +--------+---------+     +----+----+     +-----------+
	                             |                    |
	                             +------> Cleanup <---+

🎯 Purpose:
- Validates the repository, the destination and the branch name
- Asks the version-control tool for a new worktree
- Runs the sync pipeline: resolve, register, filter, copy
- Reports per-file outcomes and the final summary

⚡ Failure policy:
- Validating fails without side effects and needs no cleanup
- A worktree-creation failure runs Cleanup once, then the run fails
- Per-file copy failures are absorbed into the report

🔍 Example:

	p, err := operation.New(operation.Options{
		Open:     operation.OpenGit,
		Reporter: logger,
	})
	if err != nil {
		return err
	}
	result, err := p.Run(ctx, operation.Input{Destination: dest, Branch: branch})
*/
package operation
