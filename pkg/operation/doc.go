/*
Package operation turns a listing edited by the user into filesystem changes.

	+-------------+     +-------------+     +-------------+
	|   source    | --> |   Builder   | --> |  Executor   |
	| (Collect)   |     | (edit+check)|     | (relocate,  |
	+-------------+     +------+------+     |  rename)    |
	                           |            +-------------+
	                    +------+------+
	                    |  validate   |
	                    +-------------+

🎯 Purpose:
- Diff the edited listing against the sources line by line
- Fold changed lines into a batch, rejecting conflicts as they appear
- Apply the batch in listing order

🔄 Flow:
1. Sources are serialized one per line and handed to the editor
2. Line i is read as the destination of source i; unchanged lines are skipped
3. Each remaining pair is checked against the pairs accepted before it
4. On a rejected line the user may edit again or abort (strict mode fails instead)
5. Each operation creates the destination directory, relocates the entry, then renames it

⚡ Copy mode:
Relocation duplicates the entry into the new directory and the rename step
renames the duplicate. Without a relocation the rename step duplicates
straight to the new name. The source is never touched.

🔍 Example:

	ctx = log.NewContext(ctx, log.New(os.Stdout, zerolog.Nop(), log.Options{}))
	op, err := operation.New(operation.Options{Editor: ed, Prompter: p, FS: fsops.New()})
	processed, err := op.Run(ctx, []string{"docs/*"})
*/
package operation
