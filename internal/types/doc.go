// Package types holds the JSON messages exchanged over the websocket.
//
// Client -> Server
//
//	Player edits:
//	  InsertRune { rune }             RemoveRune { index }
//	  InsertRuneException { rune, stacks }
//	  RemoveRuneException { index }
//	  SetAbilityLevels { abilities: {q, w, e, r} }
//
//	Data edits, target "player" or "enemy" (+ enemy index):
//	  SetStats { stats }   SetStacks { stacks }   SetLevel { level }
//	  SetInferStats { flag }   SetMegaGnar { flag }   SetChampion { champion }
//	  InsertItem { item }   RemoveItem { index }
//	  InsertItemException { item, stacks }   RemoveItemException { index }
//
//	Roster:
//	  PushEnemy {}   RemoveEnemy { enemy }
//
//	Dragons:
//	  SetDragons { dragon: ally_fire | ally_earth | ally_chemtech | enemy_earth, count }
//
// Server -> Client
//
//	Snapshot { version, player, enemies, dragons, game }
//	Error { error }
//
// Removals swap the last element into the removed slot, so clients should
// re-read indices from the next snapshot.
package types
