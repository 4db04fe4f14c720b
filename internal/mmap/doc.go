// Package mmap maps tree-set files read-only into memory.
//
// Large tree sets are parsed straight from the page cache:
//
//	m, err := mmap.Open("trees.nwk")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.AccessSequential)
//	forest, err := newick.ReadForest(ctx, m.Reader())
//
// Unix uses mmap(2) and madvise(2); Windows uses CreateFileMapping and
// MapViewOfFile, where Advise is a no-op.
//
// Callers must not touch Bytes after Close returns.
package mmap
