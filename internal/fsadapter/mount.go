// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package fsadapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	wad "github.com/tindalos/wadfs"
)

// Options configures the mount.
type Options struct {
	// Mountpoint is the directory the archive is exposed under.
	Mountpoint string

	// Archive is the already-loaded archive to present. The caller owns
	// its lifecycle and must Close it after Unmount to persist any
	// mutations made through the mount.
	Archive *wad.Archive

	// SingleThreaded requests single-threaded FUSE dispatch, matching
	// the reference tool's -s flag.
	SingleThreaded bool

	// AllowOther permits other users to access the mount. Requires
	// user_allow_other in /etc/fuse.conf.
	AllowOther bool

	// Logger receives diagnostic messages. If nil, a text logger on
	// stderr that reports only errors is used.
	Logger *slog.Logger
}

// Mount mounts the archive's tree at the configured mountpoint. The
// caller must call Unmount on the returned server when done.
func Mount(options Options) (*fuse.Server, error) {
	if options.Mountpoint == "" {
		return nil, fmt.Errorf("mountpoint is required")
	}
	if options.Archive == nil {
		return nil, fmt.Errorf("archive is required")
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	}

	root := &archiveNode{archive: options.Archive, options: &options, path: "/"}

	entryTimeout := time.Second
	attrTimeout := time.Second

	server, err := gofuse.Mount(options.Mountpoint, root, &gofuse.Options{
		EntryTimeout: &entryTimeout,
		AttrTimeout:  &attrTimeout,
		MountOptions: fuse.MountOptions{
			FsName:         "wadfs",
			Name:           "wad",
			AllowOther:     options.AllowOther,
			SingleThreaded: options.SingleThreaded,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mounting wad filesystem at %s: %w", options.Mountpoint, err)
	}

	options.Logger.Info("wad filesystem mounted", "mountpoint", options.Mountpoint)
	return server, nil
}

// archiveNode is every node in the mounted tree: the root, any
// directory, or any file. Its identity is its accumulated full path;
// kind and size are resolved on demand by querying the archive rather
// than cached, since the archive's path index is the only tree state
// this package trusts (§6.3).
type archiveNode struct {
	gofuse.Inode
	archive *wad.Archive
	options *Options
	path    string
}

var _ gofuse.InodeEmbedder = (*archiveNode)(nil)
var _ gofuse.NodeLookuper = (*archiveNode)(nil)
var _ gofuse.NodeReaddirer = (*archiveNode)(nil)
var _ gofuse.NodeGetattrer = (*archiveNode)(nil)
var _ gofuse.NodeMkdirer = (*archiveNode)(nil)
var _ gofuse.NodeMknoder = (*archiveNode)(nil)
var _ gofuse.NodeOpener = (*archiveNode)(nil)
var _ gofuse.NodeReader = (*archiveNode)(nil)
var _ gofuse.NodeWriter = (*archiveNode)(nil)

func childPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

func (n *archiveNode) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	child := childPath(n.path, name)

	switch {
	case n.archive.IsDirectory(child):
		out.Mode = syscall.S_IFDIR | 0o755
		return n.NewInode(ctx, &archiveNode{archive: n.archive, options: n.options, path: child},
			gofuse.StableAttr{Mode: syscall.S_IFDIR}), 0

	case n.archive.IsContent(child):
		out.Mode = syscall.S_IFREG | 0o644
		out.Size = uint64(n.archive.GetSize(child))
		return n.NewInode(ctx, &archiveNode{archive: n.archive, options: n.options, path: child},
			gofuse.StableAttr{Mode: syscall.S_IFREG}), 0
	}

	return nil, syscall.ENOENT
}

func (n *archiveNode) Readdir(ctx context.Context) (gofuse.DirStream, syscall.Errno) {
	var names []string
	if n.archive.GetDirectory(n.path, &names) < 0 {
		return nil, syscall.ENOTDIR
	}

	entries := make([]fuse.DirEntry, 0, len(names))
	for _, name := range names {
		child := childPath(n.path, name)
		mode := uint32(syscall.S_IFREG)
		if n.archive.IsDirectory(child) {
			mode = syscall.S_IFDIR
		}
		entries = append(entries, fuse.DirEntry{Name: name, Mode: mode})
	}

	return &sliceDirStream{entries: entries}, 0
}

// sliceDirStream implements gofuse.DirStream from a fixed slice of entries.
type sliceDirStream struct {
	entries []fuse.DirEntry
	index   int
}

func (s *sliceDirStream) HasNext() bool {
	return s.index < len(s.entries)
}

func (s *sliceDirStream) Next() (fuse.DirEntry, syscall.Errno) {
	if s.index >= len(s.entries) {
		return fuse.DirEntry{}, syscall.EINVAL
	}
	entry := s.entries[s.index]
	s.index++
	return entry, 0
}

func (s *sliceDirStream) Close() {}

func (n *archiveNode) Getattr(ctx context.Context, f gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	if n.archive.IsDirectory(n.path) {
		out.Mode = syscall.S_IFDIR | 0o755
		return 0
	}

	out.Mode = syscall.S_IFREG | 0o644
	if size := n.archive.GetSize(n.path); size >= 0 {
		out.Size = uint64(size)
	}
	return 0
}

// Mkdir implements the §6.3 contract: EEXIST if the path already
// exists, otherwise createDirectory followed by a re-check (the
// library never reports why a mutator call was a no-op).
func (n *archiveNode) Mkdir(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	child := childPath(n.path, name)

	if n.archive.IsDirectory(child) || n.archive.IsContent(child) {
		return nil, syscall.EEXIST
	}

	n.archive.CreateDirectory(child)
	if !n.archive.IsDirectory(child) {
		return nil, syscall.EIO
	}

	out.Mode = syscall.S_IFDIR | 0o755
	return n.NewInode(ctx, &archiveNode{archive: n.archive, options: n.options, path: child},
		gofuse.StableAttr{Mode: syscall.S_IFDIR}), 0
}

func (n *archiveNode) Mknod(ctx context.Context, name string, mode, rdev uint32, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	child := childPath(n.path, name)

	if n.archive.IsDirectory(child) || n.archive.IsContent(child) {
		return nil, syscall.EEXIST
	}

	n.archive.CreateFile(child)
	if !n.archive.IsContent(child) {
		return nil, syscall.EIO
	}

	out.Mode = syscall.S_IFREG | 0o644
	return n.NewInode(ctx, &archiveNode{archive: n.archive, options: n.options, path: child},
		gofuse.StableAttr{Mode: syscall.S_IFREG}), 0
}

func (n *archiveNode) Open(ctx context.Context, flags uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

func (n *archiveNode) Read(ctx context.Context, f gofuse.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	read := n.archive.GetContents(n.path, dest, len(dest), int(off))
	if read < 0 {
		return nil, syscall.EIO
	}
	return fuse.ReadResultData(dest[:read]), 0
}

func (n *archiveNode) Write(ctx context.Context, f gofuse.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	written := n.archive.WriteToFile(n.path, data, len(data), int(off))
	if written < 0 {
		return 0, syscall.EIO
	}
	return uint32(written), 0
}
