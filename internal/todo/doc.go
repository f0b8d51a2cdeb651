// Package todo defines the task record exchanged with the remote collection
// and the rule that turns a record into a display progress value.
//
// A record on the wire looks like:
//
//	{
//	  "id": 7,
//	  "title": "Write report",
//	  "description": "Quarterly numbers",
//	  "completed": false,
//	  "start_time": "2024-03-01T09:00:00Z",
//	  "end_time": "2024-03-01T17:00:00Z",
//	  "progress": 0,
//	  "created_at": "2024-02-28T12:00:00Z"
//	}
//
// # Timestamps
//
// Decoding accepts RFC 3339 (with or without fractional seconds),
// "2006-01-02T15:04:05" and the datetime-local layout "2006-01-02T15:04".
// null, "" and the Go zero time all mean "absent". Encoding writes null for
// absent values and the UTC datetime-local layout otherwise.
//
// # Progress
//
// A stored progress within [0,100] is a manual override. A missing or null
// progress decodes to NoProgress, and ComputeProgress derives a value from the
// start and end times instead. Display values are always clamped to [0,100].
package todo
