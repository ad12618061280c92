package setlist

import "github.com/desertthunder/setlist/internal/models"

// DemoConcertName names the bundled demo board.
const DemoConcertName = "Jazz Quartet Live"

var demoSongs = []struct{ title, key, tempo, notes string }{
	{"All The Things You Are", "Cm/eb", "138", "Intro (4 sidste t.); vokal+sax; solo bas/gui; solo sax; vokal (rit.)"},
	{"Brevet", "Dm", "66", "Intro (D.S. og ud); vokal; solo fl (AA+B); vokal (D.S. og ud)"},
	{"Dansevise", "Am", "160", "Intro (8t u.sax); vokal; solo sax; solo gui/vok (fra t. 21); coda (rubato)"},
	{"Deirdres Samba", "Cm", "72", "Intro (sidste 8t u.fl); vokal+ml spil (8t); vokal+ml spil (8t); vokal (slut på 4-slag)"},
	{"Desafinado", "F", "132", "Intro 8t u.sax; vokal; solo sax; vokal+sax fra C; outro (7t.)"},
	{"Dejlighedssang", "Bb", "88", "Instr sax+bas; vokal+gui; vokal+bas; tutti (f); solo sax; vokal (u.Sax); vokal+sax; tutti (p)"},
	{"Hvorfor er lykken så lunefuld", "Fm", "54", "Intro vers (t1-12 u.sax); vokal; solo sax; solo gui/vok (B); outro intro (rit bas)"},
	{"Libertango", "Cm", "116", "A0+A1-sax; B gui; A2 gui; A0+A1 vok; B+A2 sax; A0-sax; A1-gui+bas (lyrisk); B+A2 vokal+sax"},
	{"Nature Boy", "Dm", "108", "Intro (bas4t+gui4t); vokal (1/2 H 1/2 S); solo fl; vokal (H+S)/Da capo; outro (tutti)"},
	{"Quiet Night Of Quiet Stars", "Bb", "63", "Intro (t25 og ud); vokal; solo-sax; solo-gui; vokal+sax (u. rit.)"},
	{"Round Midnight", "Cm", "60", "Intro sax (solo)+gui; instr; vokal; solo-sax (2xA)/Gui (B+A); sax (2xA, mel)/vok (B+A)"},
	{"Sakta vi gå gennem stan", "Bb", "108", "Instr sax; vokal; solo gui/bas; vokal+sax (rit.)"},
	{"There Will Never Be Another You", "C", "152", "Intro (4 sidste t); vokal; chase vok/fl; chase gui/bas; vokal+fl; outro (3x3 t + sidste)"},
	{"Those Who Were", "G + Bb", "50", "Intro (4t); instr sax; vokal/+sax fra B; vokal+sax; solo sax; outro (4t.)"},
	{"This Masquerade", "Bbm", "108", "Intro (4t); instr sax+4t; vokal+4t; solo gui (AB)/vok+sax (A); outro (3 x t.13-16, rit)"},
	{"Wave", "Eb", "126", "Intro 8t; vokal; solo gui; solo sax AA/vok BC; outro (8t.)"},
	{"Autumn Leaves", "Cm", "138", "Intro sax (rubato); instr sax; vokal; solo sax; outro (rit)"},
	{"What It Means To Me", "Cm/Eb", "60", "Instr sax; vokal; solo-sax+vok; solo gui; vokal+sax fra B"},
}

// Demo returns the bundled demo board: every song in the repertoire, nothing locked.
// Each call mints fresh uids.
func (e *Engine) Demo() models.State {
	state := models.NewState(DemoConcertName)
	created := e.now().UnixMilli()
	for _, d := range demoSongs {
		state.Columns.Rep = append(state.Columns.Rep, models.Song{
			UID:       e.newID(),
			Title:     d.title,
			Key:       d.key,
			Tempo:     d.tempo,
			Notes:     d.notes,
			CreatedAt: created,
		})
	}
	return state
}
