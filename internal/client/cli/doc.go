// Package cli implements the interactive crudkeeper console.
//
// Each collection ("unicorns", "products") is a screen bound to a
// services.Collection. Commands name the screen explicitly or act on the
// active one chosen with "use":
//
//	list [collection] [-f]   list records; -f bypasses the read cache
//	show [collection]        show one record (prompts for id)
//	add [collection]         create a record (prompts per field)
//	edit [collection]        update a record (prompts for id, then fields)
//	delete [collection]      delete a record after confirmation
//	refresh                  drop every cached response
//	stats                    record count per collection
//	use <collection>         change the active collection
//	help, exit | quit
//
// Failures are reported as one-line notifications chosen by error kind;
// the console keeps running after any failed command.
package cli
