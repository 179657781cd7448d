// Package sqlite persists the query console history.
//
// It stores every console execution (the traversal,
// whether it was visualized, its outcome and how many vertices it
// produced) so the console can offer recent queries again. The page state
// itself is never persisted; each session starts empty.
package sqlite
