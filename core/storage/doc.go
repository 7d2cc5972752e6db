// Package storage provides object storage access for item images.
//
// It exposes two layers:
//
//   - Client: a thin interface over the Minio SDK (bucket checks, put, get,
//     remove) so higher layers can be tested against mocks.
//   - ImageStore: the image lifecycle used by the inventory engine. Upload
//     returns the public URL persisted on the item row; Replace swaps an image
//     and removes the old object; Delete takes a stored URL and removes the
//     object behind it.
//
// Item removal deletes the stored image before the database row, so a failed
// remove may leave an item without an image; the engine handles that by
// reloading rather than reverting.
package storage
