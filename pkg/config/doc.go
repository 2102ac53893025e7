/*
Package config loads the options of a run from a file.

	            +-------------+
	            |   Config    |
	            | (options)   |
	            +------+------+
	                   |
	    +--------+-----+-----+--------+
	    |        |           |        |
	  YAML      HCL        JSON     TOML

🎯 Purpose:
- Read defaults for the command-line flags from an options file
- Pick the parser from the file extension (.mveditrc is YAML or HCL)
- Compile the exclude pattern once

🔄 Flow:
1. --config names a file, otherwise DefaultPath is used when present
2. The parser decodes into Config, rejecting unknown fields
3. Validate compiles Exclude and lets quiet win over verbose
4. The CLI overrides fields with the flags the user actually set

🔍 Example:

	cfg, err := config.Load(ctx, "mvedit.toml")
	if err != nil {
		return err
	}
	collector := source.NewCollector(cwd, source.Options{Exclude: cfg.ExcludePattern()})
*/
package config
