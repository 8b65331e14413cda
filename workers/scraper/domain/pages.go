package domain

// Page is one curated Facebook page.
type Page struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// DefaultPages are organizations related to reproductive rights and feminist
// movements in Mexico.
var DefaultPages = []Page{
	// Organizaciones principales
	{"La Cadera de Eva", "https://www.facebook.com/lacaderadeeva"},
	{"Luchadoras", "https://www.facebook.com/LuchadorasMX"},
	{"Balance A.C.", "https://www.facebook.com/balance.ac"},
	{"Telefem", "https://www.facebook.com/telefem"},
	{"GIRE", "https://www.facebook.com/GrupodeInformacionenReproduccionElegida"},
	{"Fondo MARIA", "https://www.facebook.com/FondoMARIAmx"},
	{"Marea Verde México", "https://www.facebook.com/MareaVerdeMx"},
	{"Necesito Abortar México", "https://www.facebook.com/necesitoabortar"},
	{"Abortistas MX", "https://www.facebook.com/abortoenmexico"},
	{"Las Libres", "https://www.facebook.com/laslibresgto"},
	{"OCNF", "https://www.facebook.com/ocnfeminicidio.mexico"},
	{"Michis Aborteros", "https://www.facebook.com/michis.aborteros"},
	{"Red Nacional de Refugios A.C.", "https://www.facebook.com/RedNacionaldeRefugiosAC"},
	{"Brujas del Mar", "https://www.facebook.com/brujasdelmar"},
	{"Aborto Seguro CDMX", "https://www.facebook.com/Abortosegurocdmx"},
	{"Colectiva DECIDE", "https://www.facebook.com/colectiva.decide"},
	{"Red Feminista Nacional MX", "https://www.facebook.com/redfem.mx"},
	{"Las Constituyentes MX", "https://www.facebook.com/LasConstiMx"},
	{"Feminismo MX", "https://www.facebook.com/FeminismoMxOficial"},
	{"Voces Feministas", "https://www.facebook.com/vocesfeministas1"},
	{"Menstruación Digna México", "https://www.facebook.com/menstruaciondignamexico"},
	{"Frente Feminista Nacional México", "https://www.facebook.com/frentefeministanacional"},
	{"REDAFEM", "https://www.facebook.com/REDAFEMOFICIAL"},
	{"Clítoris Sapiens", "https://www.facebook.com/clitorissapiens"},
	{"Morras Help Morras", "https://www.facebook.com/morrashelp"},
	{"Ni Una Menos México", "https://www.facebook.com/NiUnaMenosMx"},
	{"Red de Mujeres Defensoras de México", "https://www.facebook.com/RedMujeresDefensoras"},
	{"Pan y Rosas México", "https://www.facebook.com/PanyRosasMTSMexico"},
	{"CIMAC Noticias", "https://www.facebook.com/CIMACnoticias"},
	{"Equis Justicia", "https://www.facebook.com/equisjusticia"},

	// Redes de acompañamiento y organizaciones locales
	{"Abortistas del Norte", "https://www.facebook.com/abortistasdelnorte"},
	{"Acompañantes Tijuana", "https://www.facebook.com/acompanantestijuana"},
	{"Red de Acompañantes Mérida – Las Hijas de Ixchel", "https://www.facebook.com/hijasdeixchel"},
	{"Acompañantas Cancún – Marea Verde QRoo Acompaña", "https://www.facebook.com/MareaVerdeQRooAcompana"},
	{"Acompañantes Sonora – Sororas Sonora", "https://www.facebook.com/sororassonora"},
	{"Red de Acompañantas Puebla – Te Acompaño Puebla", "https://www.facebook.com/teacompanopuebla"},
	{"Brujas del Mar Acompañan", "https://www.facebook.com/brujasdelmaracompanamiento"},
	{"Abortistas BCS", "https://www.facebook.com/abortistasbcs"},
	{"Parteras Autónomas Feministas", "https://www.facebook.com/parterasfeministas"},
	{"Aireana México", "https://www.facebook.com/aireanamexico"},

	// Organizaciones contra feminicidios y violencia
	{"Justicia para Nuestras Hijas", "https://www.facebook.com/justiciaparanuestrashijas"},
	{"Familias Unidas Contra Feminicidios", "https://www.facebook.com/familiasunidascontrafeminicidios"},
	{"Ni Una Más México", "https://www.facebook.com/niunamasmexicooficial"},
	{"Mujeres de la Sal", "https://www.facebook.com/mujeresdelasal"},
	{"Hasta Encontrarles CDMX", "https://www.facebook.com/hastaencontrarlescdmx"},
	{"Justicia para Lesvy", "https://www.facebook.com/justiciaparalesvy"},
	{"Red Yo Te Creo México", "https://www.facebook.com/yotecreomex"},
	{"Voces de Mujeres en Acción", "https://www.facebook.com/vocesdemujeresenaccion"},
	{"Mujeres Organizadas UV", "https://www.facebook.com/MujeresOrganizadasUV"},
	{"Nos Queremos Vivas Neza", "https://www.facebook.com/nosqueremosvivasneza"},

	// Defensoras digitales y ciberfeminismo
	{"Defensoras Digitales México", "https://www.facebook.com/defensorasdigitalesmexico"},
	{"Defensoras Digitales Puebla", "https://www.facebook.com/defensorasdigitalespuebla"},
	{"Ciberfeministas México", "https://www.facebook.com/ciberfeministasmx"},
	{"Lunas Digitales", "https://www.facebook.com/lunasdigitales"},
	{"Sororidad Digital MX", "https://www.facebook.com/sororidaddigitalmx"},
}
