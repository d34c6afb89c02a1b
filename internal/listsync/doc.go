// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package listsync keeps an in-memory snapshot of a backend table in step
// with the backend.
//
// A [Synchronizer] fetches the whole table, subscribes to its change
// notifications and fetches the whole table again on every notification.
// Snapshots are pushed to a callback; nothing is ever patched in place, so a
// snapshot is always a complete fetch result.
//
//	sync := listsync.New(gateway, models.DecodeRecord[models.Client], log)
//	if err := sync.Start(ctx, models.TableClients, render); err != nil {
//		return err
//	}
//	defer sync.Stop()
package listsync
