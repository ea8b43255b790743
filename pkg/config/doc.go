/*
Package config loads the optional wtcopy settings file from a repository root.

	      +-------------+
	      |   Config    |
	      | (Settings)  |
	      +------+------+
	             |
	   +---------+---------+
	   |         |         |
	+--+--+   +--+--+   +--+--+
	| HCL |   | YAML|   | JSON|
	+-----+   +-----+   +-----+

🎯 Purpose:
- Finds .wtcopy.hcl, .wtcopy.yaml, .wtcopy.yml or .wtcopy.json at the root
- Parses it with the parser registered for its extension
- Fills defaults and validates the result

⚡ Every field is optional. A repository without a settings file gets Default().

🔍 Example:

	cfg, err := config.Discover(ctx, root, "")
	if err != nil {
		return err
	}
	blacklist := cfg.Blacklist()
*/
package config
