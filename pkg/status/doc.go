/*
Package status records what happened to every candidate file during a
provisioning run and turns it into the final summary.

	+-------------+       +-------------+
	|  copier /   | ----> |   Summary   |
	|  filter     |       |  (counts)   |
	+-------------+       +------+------+
	                             |
	                      +------+------+
	                      |  Formatter  |
	                      |  (UI lines) |
	                      +-------------+

🎯 Purpose:
- One CopyResult per distinct candidate, never more
- Aggregate counts: copied, skipped-oversize, skipped-blacklisted, failed
- Deduplicated excluded directory names in first-seen order

🔍 Example:

	sum := status.NewSummary()
	sum.Record(status.CopyResult{Source: src, Destination: dst, Outcome: status.Copied})
	fmt.Println(sum.Counts())
*/
package status
