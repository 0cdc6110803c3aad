// Package generator renders embedded templates and writes the results to a
// project tree as one unit.
//
// # Transactions
//
// Files written by a single pipeline stage are staged and committed together:
//
//	tx := generator.NewTransaction()
//	tx.AddFile("src/app/page.tsx", page, 0644)
//	tx.AddFile("src/components/ui/toaster.tsx", toaster, 0644)
//	tx.RemoveFile("src/components/Welcome.astro")
//
//	if err := tx.Commit(ctx); err != nil {
//	    // every touched path is back to what it was
//	    return err
//	}
//
// Unlike a plain write-then-delete rollback, overwritten files get their
// previous content back and removed files are restored.
//
// # Diffs
//
// DiffGenerator produces colored unified diffs (Myers algorithm) for
// `hackpack patch --diff`. Long diffs open in a scrollable viewer.
package generator
