// Package refresh turns scroll gestures on a container into refresh cycles.
//
// # Overview
//
// A Component watches one edge of a scrollable Container. Top and left
// components implement pull-to-refresh: pulling the content away from the
// edge past the animator's trigger distance and releasing starts a refresh.
// Bottom and right components implement load-more: scrolling to the trailing
// end of the content starts one. All four are the same state machine,
// parameterised by an edge descriptor that says which offset, inset and size
// fields to read and how short content is handled.
//
// # States
//
//	idle ──drag──> pulling ──past trigger──> release-to-refresh
//	  ^                                        │ release
//	  │                                        v
//	  └──────────────stop─────────────── refreshing
//
//	load-more edges: idle ──reach end──> refreshing ──stop──> idle
//	                 any  ──NoticeNoMoreData──> no-more-data ──Reset──> idle
//
// # Animation and re-entrancy
//
// Starting and stopping change the container's inset and offset, which makes
// the container call the component's observer again. The component sets its
// IgnoreObserver guard for the duration of those changes. The animation
// itself is modelled as a continuation scheduled on the container with
// Container.Schedule; the component resumes there (runs the handler,
// restores bounce, clears the guard). A stop requested before a start
// continuation has run, or a start requested during a stop, is held in a
// single pending slot and replayed when the running continuation finishes.
//
// # Attachment
//
// Attachment owns the four optional component slots of one container and
// provides the host-level calls: StartPullToRefresh, AutoPullToRefreshIfExpired,
// StopPullToRefresh, NoticeNoMoreData, ResetNoMoreData and StopLoadingMore.
// Last-refresh dates and expiry intervals live in a DateStore keyed by the
// refresh identifier.
//
// # Threading
//
// Nothing here is safe for concurrent use. Hosts must call into components
// and deliver observer callbacks and scheduled continuations from a single
// UI goroutine.
package refresh
