package i18n

import (
	admincatalog "github.com/louisbranch/beveragebuddy/internal/services/admin/catalog"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/loadsim"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// UI message keys. Keys are the English text.
const (
	KeyPageTitle          = "Categories List"
	KeyHeader             = "Categories"
	KeySearchHeader       = "Search for “%s”"
	KeySearchPlaceholder  = "Search"
	KeyNewCategory        = "New category"
	KeyEditCategory       = "Edit category"
	KeyColumnName         = "Name"
	KeyColumnBeverages    = "Beverages"
	KeyEdit               = "Edit"
	KeySave               = "Save"
	KeyCancel             = "Cancel"
	KeyDelete             = "Delete"
	KeyDeleteTitle        = "Delete category “%s”?"
	KeyDeleteReviewsNote  = "Deleting the category will mark the associated reviews as “undefined”. You may link the reviews to other categories on the edit page."
	KeyCategoryAdded      = "Category successfully added."
	KeyCategoryEdited     = "Category successfully edited."
	KeyCategoryDeleted    = "Category successfully deleted."
	KeyNoCategories       = "No categories found."
	KeyDidYouMean         = "Did you mean %s?"
	KeyUnexpectedError    = "Something went wrong. Please try again."
	KeyUndefinedProtected = "The undefined category cannot be modified."
	KeyLanguage           = "Language"
)

var messages = catalog.NewBuilder(catalog.Fallback(language.English))

// Printer formats message keys in tag's language, falling back to English.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

func init() {
	ptBR := language.MustParse("pt-BR")
	for key, value := range map[string]string{
		KeyPageTitle:                      "Lista de categorias",
		KeyHeader:                         "Categorias",
		KeySearchHeader:                   "Busca por “%s”",
		KeySearchPlaceholder:              "Buscar",
		KeyNewCategory:                    "Nova categoria",
		KeyEditCategory:                   "Editar categoria",
		KeyColumnName:                     "Nome",
		KeyColumnBeverages:                "Bebidas",
		KeyEdit:                           "Editar",
		KeySave:                           "Salvar",
		KeyCancel:                         "Cancelar",
		KeyDelete:                         "Excluir",
		KeyDeleteTitle:                    "Excluir a categoria “%s”?",
		KeyDeleteReviewsNote:              "Excluir a categoria marcará as avaliações associadas como “indefinidas”. Você pode vincular as avaliações a outras categorias na página de edição.",
		KeyCategoryAdded:                  "Categoria adicionada com sucesso.",
		KeyCategoryEdited:                 "Categoria editada com sucesso.",
		KeyCategoryDeleted:                "Categoria excluída com sucesso.",
		KeyNoCategories:                   "Nenhuma categoria encontrada.",
		KeyDidYouMean:                     "Você quis dizer %s?",
		KeyUnexpectedError:                "Algo deu errado. Tente novamente.",
		KeyUndefinedProtected:             "A categoria indefinida não pode ser modificada.",
		KeyLanguage:                       "Idioma",
		admincatalog.MsgNameTooShort:      "O nome deve ter pelo menos 3 caracteres",
		admincatalog.MsgNameNotUnique:     "O nome da categoria deve ser único",
		admincatalog.MsgNameRequired:      "O nome é obrigatório",
		admincatalog.MsgCountNegative:     "A contagem não pode ser negativa",
		loadsim.StartedMessage:            "Iniciando uma operação muito muito longa",
		loadsim.StepFormat:                "Carregando a categoria %d ...",
		loadsim.FinishedMessage:           "Concluído!",
	} {
		if err := messages.SetString(ptBR, key, value); err != nil {
			panic(err)
		}
	}
}
