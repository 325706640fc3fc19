// Package storage is the relational side of the user records service.
//
// Store reads and writes users through bun using parameterized statements
// only. Column names used in dynamic SET lists come from the closed
// users.Field enumeration, so caller supplied keys never reach SQL text.
//
// City and country labels live in their own tables and are resolved with a
// get-or-create on write. The UNIQUE(name) constraint settles concurrent
// creates of the same label: the losing insert does nothing and the follow
// up select reads the winner's id.
//
// Each operation has a Tx variant that runs on a caller supplied bun.IDB,
// mirroring the repository interfaces used elsewhere.
package storage
