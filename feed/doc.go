// Package feed polls an upstream endpoint for a single vehicle's coordinates.
//
// Two sources are supported behind one interface:
//   - a JSON endpoint returning {"V1": <lat>, "V2": <lon>}, with coordinates
//     accepted as numbers or numeric strings
//   - a GTFS-Realtime VehiclePositions protobuf feed, selecting one vehicle
//
// The Poller fetches on a fixed interval with an immediate first fetch and no
// overlap guard; every result, success or failure, is forwarded downstream so
// the consumer can derive connectivity status.
package feed
