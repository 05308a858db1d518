package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

var ErrUnknownChampion = errors.New("unknown champion")

var championNames = [ChampionCount]string{
	"Aatrox", "Ahri", "Akali", "Akshan", "Alistar", "Ambessa", "Amumu", "Anivia",
	"Annie", "Aphelios", "Ashe", "AurelionSol", "Aurora", "Azir", "Bard", "Belveth",
	"Blitzcrank", "Brand", "Braum", "Briar", "Caitlyn", "Camille", "Cassiopeia", "Chogath",
	"Corki", "Darius", "Diana", "DrMundo", "Draven", "Ekko", "Elise", "Evelynn",
	"Ezreal", "Fiddlesticks", "Fiora", "Fizz", "Galio", "Gangplank", "Garen", "Gnar",
	"Gragas", "Graves", "Gwen", "Hecarim", "Heimerdinger", "Hwei", "Illaoi", "Irelia",
	"Ivern", "Janna", "JarvanIV", "Jax", "Jayce", "Jhin", "Jinx", "KSante",
	"Kaisa", "Kalista", "Karma", "Karthus", "Kassadin", "Katarina", "Kayle", "Kayn",
	"Kennen", "Khazix", "Kindred", "Kled", "KogMaw", "Leblanc", "LeeSin", "Leona",
	"Lillia", "Lissandra", "Lucian", "Lulu", "Lux", "Malphite", "Malzahar", "Maokai",
	"MasterYi", "Mel", "Milio", "MissFortune", "MonkeyKing", "Mordekaiser", "Morgana", "Naafiri",
	"Nami", "Nasus", "Nautilus", "Neeko", "Nidalee", "Nilah", "Nocturne", "Nunu",
	"Olaf", "Orianna", "Ornn", "Pantheon", "Poppy", "Pyke", "Qiyana", "Quinn",
	"Rakan", "Rammus", "RekSai", "Rell", "Renata", "Renekton", "Rengar", "Riven",
	"Rumble", "Ryze", "Samira", "Sejuani", "Senna", "Seraphine", "Sett", "Shaco",
	"Shen", "Shyvana", "Singed", "Sion", "Sivir", "Skarner", "Smolder", "Sona",
	"Soraka", "Swain", "Sylas", "Syndra", "TahmKench", "Taliyah", "Talon", "Taric",
	"Teemo", "Thresh", "Tristana", "Trundle", "Tryndamere", "TwistedFate", "Twitch", "Udyr",
	"Urgot", "Varus", "Vayne", "Veigar", "Velkoz", "Vex", "Vi", "Viego",
	"Viktor", "Vladimir", "Volibear", "Warwick", "Xayah", "Xerath", "XinZhao", "Yasuo",
	"Yone", "Yorick", "Yunara", "Yuumi", "Zaahen", "Zac", "Zed", "Zeri",
	"Ziggs", "Zilean", "Zoe", "Zyra",
}

const ChampionCount = 172

// ParseChampion resolves a champion by name, ignoring case, spaces and
// punctuation. Unknown names report the closest candidates.
func ParseChampion(name string) (ChampionID, error) {
	key := normalizeName(name)
	if key == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownChampion)
	}
	for i, n := range championNames {
		if normalizeName(n) == key {
			return ChampionID(i), nil
		}
	}
	if suggestions := suggestChampions(key); len(suggestions) > 0 {
		return 0, fmt.Errorf("%w: %q (did you mean %s?)", ErrUnknownChampion, name, strings.Join(suggestions, ", "))
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChampion, name)
}

type candidate struct {
	name string
	dist int
}

func suggestChampions(key string) []string {
	var cands []candidate
	for _, n := range championNames {
		norm := normalizeName(n)
		dist := levenshtein.ComputeDistance(key, norm)
		if dist > distanceLimit(len(norm)) {
			continue
		}
		cands = append(cands, candidate{name: n, dist: dist})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	if len(cands) > 3 {
		cands = cands[:3]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.name
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
