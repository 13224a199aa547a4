// Package token implements the TokenContents data model and its three
// wire flavors: Sealed (AEAD ciphertext), Hash (keyed-BLAKE3 digest plus
// proof), and Composite (plaintext identity:::proof[:::target]). It also
// carries a read-only legacy decoder, DecodeBranca, for Branca-format
// tokens issued by a predecessor system; the flavor dispatcher does not
// route to it, and this package never mints new tokens in that format.
package token
