package main

import (
	"fmt"
	"io"

	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/internal/resource"
)

func renderRooms(w io.Writer, st resource.State[[]domain.RoomCardInfo]) {
	switch {
	case st.IsLoading():
		fmt.Fprintln(w, "Loading...")
	case st.IsError():
		fmt.Fprintf(w, "Fetch data error: %s\n", st.Message)
	case len(st.Value) == 0:
		fmt.Fprintln(w, "No rooms found.")
	default:
		for _, room := range st.Value {
			meta := room.RoomMetadata
			fmt.Fprintf(w, "%6d  %-30s  %3d members", meta.RoomID, meta.RoomName, room.NumOfMembers)
			if room.HostNickname != "" {
				fmt.Fprintf(w, "  host %s", room.HostNickname)
			}
			fmt.Fprintln(w)
		}
	}
}
