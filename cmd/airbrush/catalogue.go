package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ayusman/airbrush/internal/store"
)

// listSnapshots prints the catalogue, newest first.
func listSnapshots(w io.Writer, repo *store.SnapshotRepository) error {
	snaps, err := repo.List()
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(snaps) == 0 {
		fmt.Fprintln(w, "No snapshots saved yet")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSAVED\tSIZE\tMODE\tPATH")
	for _, s := range snaps {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\t%s\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.Width, s.Height, s.Mode, s.Path)
	}
	return tw.Flush()
}

// forgetSnapshot removes a catalogue entry. The image file is kept.
func forgetSnapshot(w io.Writer, repo *store.SnapshotRepository, id string) error {
	snap, err := repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", id, err)
	}
	if err := repo.Delete(id); err != nil {
		return fmt.Errorf("forget snapshot %s: %w", id, err)
	}
	fmt.Fprintf(w, "Forgot snapshot %s (%s is kept on disk)\n", snap.ID, snap.Path)
	return nil
}
