// Package shm provides shared memory regions visible to cooperating processes.
//
// # Overview
//
// A Region is a read-write MAP_SHARED mapping of an anonymous file. The
// creating process hands the file to child processes (for example through
// exec.Cmd.ExtraFiles); each child attaches to it and sees the same bytes.
// Nothing is copied and no message is exchanged: writes by one process are
// visible to every other process mapping the region.
//
// # Usage
//
//	r, err := shm.Create("results", n*8)
//	if err != nil { ... }
//	defer r.Close()
//
//	cmd.ExtraFiles = []*os.File{r.File()}
//	slots := r.Uint64s()
//
// In the child:
//
//	r, err := shm.Attach(os.NewFile(3, "results"), n*8)
//
// # Platform Support
//
//   - Linux: memfd_create(2) backed, never touches the filesystem
//   - Other Unix: an unlinked temporary file
//   - Windows and others: Create and Attach return ErrUnsupported
//
// # Thread Safety
//
// Regions carry no synchronization. Callers coordinate through disjoint
// slots or their own protocol. Close is idempotent; the returned slices are
// invalid after Close.
package shm
